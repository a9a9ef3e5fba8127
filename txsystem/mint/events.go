package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/mytoken-org/erc721-mint/types"
)

// TransferEventTopic is the ERC-721 Transfer(address,address,uint256) event signature.
var TransferEventTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

/*
transferLogs returns ERC-721 Transfer events of minting tokens "ids" to "to".
All the event arguments are indexed, so Data is empty.
*/
func transferLogs(contract, to common.Address, ids []uint64) []*types.LogEntry {
	logs := make([]*types.LogEntry, len(ids))
	for i, id := range ids {
		logs[i] = &types.LogEntry{
			Address: contract,
			Topics: []common.Hash{
				TransferEventTopic,
				{}, // minted tokens are transferred from the zero address
				common.BytesToHash(to.Bytes()),
				uint256.NewInt(id).Bytes32(),
			},
		}
	}
	return logs
}
