package mint

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	mintMethod = "makeAnNFT"
	eventName  = "NewNFTMinted"
)

// collectionABI is the subset of the collection contract the client talks to.
const collectionABI = `[
  {"anonymous":false,"inputs":[
    {"indexed":false,"internalType":"address","name":"sender","type":"address"},
    {"indexed":false,"internalType":"uint256","name":"tokenId","type":"uint256"}],
   "name":"NewNFTMinted","type":"event"},
  {"inputs":[],"name":"makeAnNFT","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// DefaultABI returns the built-in collection ABI.
func DefaultABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(collectionABI))
	if err != nil {
		panic(fmt.Sprintf("mint: built-in abi: %v", err))
	}
	return parsed
}

// LoadABI reads an ABI from path. Both a bare ABI array and a compiler
// artifact with an "abi" field are accepted.
func LoadABI(path string) (abi.ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("read abi: %w", err)
	}

	raw := data
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 0 {
		raw = artifact.ABI
	}

	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse abi: %w", err)
	}
	if _, ok := parsed.Methods[mintMethod]; !ok {
		return abi.ABI{}, fmt.Errorf("abi has no %s() function", mintMethod)
	}
	if _, ok := parsed.Events[eventName]; !ok {
		return abi.ABI{}, fmt.Errorf("abi has no %s event", eventName)
	}
	return parsed, nil
}
