package sqlstore

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lumenforge/execcache/execmodel"
)

func encodeKeys(keys []execmodel.ObjectKey) ([]byte, error) {
	b, err := msgpack.Marshal(keys)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: encode keys: %w", err)
	}
	return b, nil
}

func decodeKeys(b []byte) ([]execmodel.ObjectKey, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var keys []execmodel.ObjectKey
	if err := msgpack.Unmarshal(b, &keys); err != nil {
		return nil, fmt.Errorf("sqlstore: decode keys: %w", err)
	}
	return keys, nil
}

func objectIDHex(id execmodel.ObjectID) string { return id.String() }

func digestHex(d execmodel.Digest) string { return d.String() }

func digestFromHex(s string) (execmodel.Digest, error) {
	return execmodel.DigestFromHex(s)
}
