package byteview

import "go.uber.org/zap"

// Traced logs every access made through the wrapped view at debug level,
// in the order the accesses happen.
type Traced struct {
	View
	log *zap.Logger
}

// Trace wraps v. A nil logger disables output.
func Trace(v View, log *zap.Logger) *Traced {
	if log == nil {
		log = zap.NewNop()
	}
	return &Traced{View: v, log: log}
}

func (t *Traced) record(op string, off int, order *Endianness, value uint64, err error) {
	if ce := t.log.Check(zap.DebugLevel, op); ce != nil {
		fields := []zap.Field{zap.Int("offset", off), zap.Uint64("value", value)}
		if order != nil {
			fields = append(fields, zap.Stringer("order", *order))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		ce.Write(fields...)
	}
}

func (t *Traced) ReadInt8(off int) (int8, error) {
	x, err := t.View.ReadInt8(off)
	t.record("read int8", off, nil, uint64(uint8(x)), err)
	return x, err
}

func (t *Traced) ReadUint8(off int) (uint8, error) {
	x, err := t.View.ReadUint8(off)
	t.record("read uint8", off, nil, uint64(x), err)
	return x, err
}

func (t *Traced) ReadInt16(off int, order Endianness) (int16, error) {
	x, err := t.View.ReadInt16(off, order)
	t.record("read int16", off, &order, uint64(uint16(x)), err)
	return x, err
}

func (t *Traced) ReadUint16(off int, order Endianness) (uint16, error) {
	x, err := t.View.ReadUint16(off, order)
	t.record("read uint16", off, &order, uint64(x), err)
	return x, err
}

func (t *Traced) ReadInt32(off int, order Endianness) (int32, error) {
	x, err := t.View.ReadInt32(off, order)
	t.record("read int32", off, &order, uint64(uint32(x)), err)
	return x, err
}

func (t *Traced) ReadUint32(off int, order Endianness) (uint32, error) {
	x, err := t.View.ReadUint32(off, order)
	t.record("read uint32", off, &order, uint64(x), err)
	return x, err
}

func (t *Traced) WriteInt8(off int, x int8) error {
	err := t.View.WriteInt8(off, x)
	t.record("write int8", off, nil, uint64(uint8(x)), err)
	return err
}

func (t *Traced) WriteUint8(off int, x uint8) error {
	err := t.View.WriteUint8(off, x)
	t.record("write uint8", off, nil, uint64(x), err)
	return err
}

func (t *Traced) WriteInt16(off int, x int16, order Endianness) error {
	err := t.View.WriteInt16(off, x, order)
	t.record("write int16", off, &order, uint64(uint16(x)), err)
	return err
}

func (t *Traced) WriteUint16(off int, x uint16, order Endianness) error {
	err := t.View.WriteUint16(off, x, order)
	t.record("write uint16", off, &order, uint64(x), err)
	return err
}

func (t *Traced) WriteInt32(off int, x int32, order Endianness) error {
	err := t.View.WriteInt32(off, x, order)
	t.record("write int32", off, &order, uint64(uint32(x)), err)
	return err
}

func (t *Traced) WriteUint32(off int, x uint32, order Endianness) error {
	err := t.View.WriteUint32(off, x, order)
	t.record("write uint32", off, &order, uint64(x), err)
	return err
}

var _ View = (*Traced)(nil)
