package compile

import (
	"encoding/binary"
	"fmt"
)

// Program is a compiled unit: the linear byte stream plus the filename it
// came from, for error messages.
type Program struct {
	Filename string
	Code     []byte
}

// Writer accumulates a Program's byte stream. It is the only thing
// chipy/compile exposes for producing an encoding; chipy/ast trees go in,
// bytes come out.
type Writer struct {
	buf []byte
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Byte(b byte) { w.buf = append(w.buf, b) }

func (w *Writer) NodeType(t NodeType) { w.Byte(byte(t)) }

func (w *Writer) Uint32(n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) Int32(n int32) { w.Uint32(uint32(n)) }

func (w *Writer) String(s string) {
	w.Uint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// Decoder reads a Program's byte stream with an explicit cursor. Every
// node is read by first consuming its NodeType byte with NodeType, then
// consuming the payload with the Byte/Uint32/Int32/String primitives
// below. There is no bounds-checked "length of this node" — callers that
// don't want to evaluate a node must know its shape well enough to skip
// it (see chipy.Interpreter's skipStmt/skipExpr), which is the central discipline
// this format imposes on its one consumer.
type Decoder struct {
	buf []byte
	pos int
}

func NewDecoder(buf []byte) *Decoder { return &Decoder{buf: buf} }

func (d *Decoder) Pos() int       { return d.pos }
func (d *Decoder) SeekTo(pos int) { d.pos = pos }
func (d *Decoder) AtEnd() bool    { return d.pos >= len(d.buf) }
func (d *Decoder) Len() int       { return len(d.buf) }

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrMalformed, n, d.pos, len(d.buf)-d.pos)
	}
	return nil
}

func (d *Decoder) Byte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *Decoder) NodeType() (NodeType, error) {
	b, err := d.Byte()
	return NodeType(b), err
}

func (d *Decoder) Uint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	n := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return n, nil
}

func (d *Decoder) Int32() (int32, error) {
	n, err := d.Uint32()
	return int32(n), err
}

func (d *Decoder) String() (string, error) {
	n, err := d.Uint32()
	if err != nil {
		return "", err
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// ErrMalformed is wrapped by errors produced when the byte stream is
// truncated or otherwise inconsistent with the shape its NodeType implies.
var ErrMalformed = fmt.Errorf("malformed encoding")
