package main

import (
	"crypto"
	"crypto/ecdsa"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/mytoken-org/erc721-mint/config"
	"github.com/mytoken-org/erc721-mint/txsystem/mint"
	"github.com/mytoken-org/erc721-mint/types"
	"github.com/mytoken-org/erc721-mint/util"
)

func simulate(w io.Writer, cfg *simulateConfig) error {
	collectionCfg := config.Default()
	if cfg.CollectionConfig != "" {
		var err error
		if collectionCfg, err = config.Load(cfg.CollectionConfig); err != nil {
			return errors.Wrap(err, "Error loading collection config")
		}
	}
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = collectionCfg.Log.Level
	}
	if err := initLog(logLevel); err != nil {
		return err
	}

	sc, err := loadScenario(cfg.Scenario)
	if err != nil {
		return err
	}
	ctrl, err := runScenario(w, collectionCfg, sc, log.Root())
	if err != nil {
		return err
	}

	if cfg.SnapshotFile != "" {
		snapshot, err := ctrl.Snapshot()
		if err != nil {
			return errors.Wrap(err, "Error encoding state snapshot")
		}
		if err := os.WriteFile(cfg.SnapshotFile, snapshot, 0o600); err != nil {
			return errors.Wrap(err, "Error writing state snapshot")
		}
	}
	return nil
}

type simulation struct {
	ctrl     *mint.Controller
	accounts map[string]*ecdsa.PrivateKey
	w        io.Writer
}

/*
runScenario executes the calls of the scenario against a new collection and
prints the outcome of every call followed by the final state of the collection.
*/
func runScenario(w io.Writer, cfg *config.Config, sc *scenario, logger log.Logger) (*mint.Controller, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, errors.Wrap(err, "Error reading collection params")
	}
	addr, err := cfg.Address()
	if err != nil {
		return nil, err
	}
	ctrl, err := mint.NewController(params, mint.WithAddress(addr), mint.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "Error creating controller")
	}

	sim := &simulation{ctrl: ctrl, accounts: make(map[string]*ecdsa.PrivateKey), w: w}
	for i, call := range sc.Calls {
		repeat := max(call.Repeat, 1)
		for n := uint64(1); n <= repeat; n++ {
			if err := sim.execute(i+1, n, call); err != nil {
				return nil, err
			}
		}
	}
	if err := sim.printState(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (s *simulation) execute(callNo int, repetition uint64, call scenarioCall) error {
	order, err := s.buildOrder(call)
	if err != nil {
		return errors.Wrapf(err, "call #%d", callNo)
	}
	rec := s.ctrl.Execute(order)

	label := fmt.Sprintf("#%d", callNo)
	if call.Repeat > 1 {
		label = fmt.Sprintf("#%d.%d", callNo, repetition)
	}
	outcome := expectSuccess
	if rec.IsSuccessful() {
		ids := util.TransformSlice(rec.Receipt.Logs, func(l *types.LogEntry) string { return l.Topics[3].Big().String() })
		fmt.Fprintf(s.w, "%s %s %s(%d) value=%s: ok tokens %v\n", label, call.From, call.Method, call.Quantity, valueString(call.Value), ids)
	} else {
		outcome = rec.Receipt.RevertReason
		fmt.Fprintf(s.w, "%s %s %s(%d) value=%s: reverted: %s\n", label, call.From, call.Method, call.Quantity, valueString(call.Value), outcome)
	}

	if call.Expect != "" && call.Expect != outcome {
		return errors.Errorf("call %s: expected %q, got %q", label, call.Expect, outcome)
	}
	return nil
}

func (s *simulation) buildOrder(call scenarioCall) (*types.CallOrder, error) {
	caller, err := s.account(call.From)
	if err != nil {
		return nil, err
	}
	var payment *uint256.Int
	if call.Value != "" {
		if payment, err = mint.ParseEther(call.Value); err != nil {
			return nil, errors.Wrap(err, "Error parsing call value")
		}
	}

	switch call.Method {
	case mint.MethodName(mint.MethodSignedMint):
		signerName := call.Signer
		if signerName == "" {
			signerName = call.From
		}
		signer, err := s.key(signerName)
		if err != nil {
			return nil, err
		}
		msgHash := mint.HashMessage([]byte(call.Message))
		sig, err := signEIP191(signer, msgHash.Bytes())
		if err != nil {
			return nil, err
		}
		return mint.NewSignedMintOrder(caller, call.Quantity, msgHash, sig)
	case mint.MethodName(mint.MethodMintSet):
		return mint.NewMintSetOrder(caller, payment)
	case mint.MethodName(mint.MethodMint):
		return mint.NewMintOrder(caller, call.Quantity, payment)
	default:
		return nil, errors.Errorf("unknown method %q", call.Method)
	}
}

func (s *simulation) key(name string) (*ecdsa.PrivateKey, error) {
	if key, ok := s.accounts[name]; ok {
		return key, nil
	}
	key, err := accountKey(name)
	if err != nil {
		return nil, err
	}
	s.accounts[name] = key
	return key, nil
}

func (s *simulation) account(name string) (common.Address, error) {
	key, err := s.key(name)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey), nil
}

func (s *simulation) printState() error {
	stateHash, err := s.ctrl.StateHash(crypto.SHA256)
	if err != nil {
		return errors.Wrap(err, "Error calculating state hash")
	}

	fmt.Fprintf(s.w, "total supply: %d/%d (%d remaining)\n", s.ctrl.TotalSupply(), s.ctrl.MaxSupply(), s.ctrl.RemainingSupply())
	fmt.Fprintf(s.w, "proceeds: %s ether\n", mint.FormatEther(s.ctrl.Proceeds()))
	for _, name := range slices.Sorted(maps.Keys(s.accounts)) {
		addr := ethcrypto.PubkeyToAddress(s.accounts[name].PublicKey)
		fmt.Fprintf(s.w, "balance %s %s: %d\n", name, addr.Hex(), s.ctrl.BalanceOf(addr))
	}
	_, err = fmt.Fprintf(s.w, "state hash: %s\n", hexutil.Encode(stateHash))
	return err
}

func valueString(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
