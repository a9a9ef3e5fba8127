package main

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

/*
scenario is the list of calls the simulate command executes:

	calls:
	  - from: alice
	    method: signedMint
	    quantity: 1
	    message: "1"
	  - from: bob
	    method: mintSet
	    value: "0.05"
	  - from: carol
	    method: mint
	    quantity: 3
	    value: "0.03"
	    repeat: 10
	    expect: ok

Accounts are referred to by name, the key of the account is derived from the name.
*/
type scenario struct {
	Calls []scenarioCall `yaml:"calls"`
}

type scenarioCall struct {
	From     string `yaml:"from"`
	Method   string `yaml:"method"`   // signedMint, mintSet or mint
	Quantity uint64 `yaml:"quantity"` // signedMint and mint
	Value    string `yaml:"value"`    // payment in ether
	Message  string `yaml:"message"`  // signedMint: the signed message
	Signer   string `yaml:"signer"`   // signedMint: account signing the message, defaults to "from"
	Repeat   uint64 `yaml:"repeat"`   // number of times to execute the call, defaults to 1
	Expect   string `yaml:"expect"`   // "ok" or the expected revert reason, not checked when empty
}

const expectSuccess = "ok"

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading scenario file")
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*scenario, error) {
	sc := &scenario{}
	if err := yaml.UnmarshalWithOptions(data, sc, yaml.Strict()); err != nil {
		return nil, errors.Wrap(err, "Error decoding scenario")
	}
	for i, call := range sc.Calls {
		if call.From == "" {
			return nil, errors.Errorf("call #%d: caller account is required", i+1)
		}
		if call.Method == "" {
			return nil, errors.Errorf("call #%d: method is required", i+1)
		}
	}
	return sc, nil
}
