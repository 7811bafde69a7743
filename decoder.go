// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

// DecoderOptions are fixed when a decoder is constructed.
type DecoderOptions struct {
	// Fatal makes malformed input an error instead of substituting it.
	Fatal bool

	// IgnoreBOM keeps a leading U+FEFF in the output.
	IgnoreBOM bool

	// Replacement is the rune substituted for malformed input. Zero selects U+FFFD.
	Replacement rune
}

// Policy returns the replacement policy the options select for order.
func (o DecoderOptions) Policy(order ByteOrder) Policy {
	return newPolicy(o.Fatal, o.Replacement, order)
}

// DecodeOption configures a single Decode call.
type DecodeOption func(*decodeCall)

type decodeCall struct {
	stream bool
}

// Stream marks the call as one chunk of a larger input. An incomplete group at the end is
// held back for the next call instead of being treated as malformed.
func Stream() DecodeOption {
	return func(c *decodeCall) { c.stream = true }
}

// Decoder decodes UTF-32 in one byte order.
//
// Calls with Stream continue the same document, the first call without it ends the document:
// held back bytes are flushed and the next call starts over, BOM handling included.
type Decoder struct {
	order ByteOrder
	opts  DecoderOptions

	engine *DecodeEngine
}

// NewDecoder returns a decoder for order.
func NewDecoder(order ByteOrder, opts DecoderOptions) *Decoder {
	return &Decoder{
		order:  order,
		opts:   opts,
		engine: NewDecodeEngine(order, opts.Policy(order), opts.IgnoreBOM),
	}
}

// Decode decodes p. A nil or empty p without Stream flushes what earlier streaming calls held back.
func (d *Decoder) Decode(p []byte, opts ...DecodeOption) (string, error) {
	rs, err := d.DecodeRunes(p, opts...)
	if err != nil {
		return "", err
	}
	return string(rs), nil
}

// DecodeRunes is Decode without the conversion to string.
func (d *Decoder) DecodeRunes(p []byte, opts ...DecodeOption) ([]rune, error) {
	var call decodeCall
	for _, o := range opts {
		o(&call)
	}

	rs, _, err := d.engine.Step(make([]rune, 0, len(p)/GroupSize+1), p, !call.stream)
	if err != nil || !call.stream {
		d.engine.Reset()
	}
	return rs, err
}

// Encoding returns the label of the decoder's byte order.
func (d *Decoder) Encoding() string { return d.order.Label() }

func (d *Decoder) ByteOrder() ByteOrder { return d.order }

func (d *Decoder) Fatal() bool { return d.opts.Fatal }

func (d *Decoder) IgnoreBOM() bool { return d.opts.IgnoreBOM }
