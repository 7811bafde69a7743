// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package textstore

import (
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

// Record is what the store keeps per key, encoded as msgpack.
type Record struct {
	// Label names the byte order of Data, see utf32.ByteOrder.Label.
	Label string `codec:"label"`

	// Fatal makes Get fail on malformed Data instead of substituting U+FFFD.
	Fatal bool `codec:"fatal"`

	// Data is the UTF-32 text, starting with a BOM.
	Data []byte `codec:"data"`
}

var mh = &codec.MsgpackHandle{WriteExt: true}

func marshalRecord(rec Record) ([]byte, error) {
	var out []byte
	err := codec.NewEncoderBytes(&out, mh).Encode(rec)
	if err != nil {
		return nil, errors.Wrap(err, "textstore: failed to encode record")
	}
	return out, nil
}

func unmarshalRecord(data []byte) (Record, error) {
	var rec Record
	err := codec.NewDecoderBytes(data, mh).Decode(&rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "textstore: failed to decode record")
	}
	return rec, nil
}
