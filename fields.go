package mbuf

import (
	"math"
	"reflect"

	"github.com/pkg/errors"
)

// EncodeFields encodes each item in order. Multi-byte values are written
// big-endian; strings are zero-terminated and []byte values carry a uint32
// length prefix.
func EncodeFields(w *Writer, items ...interface{}) error {
	for _, item := range items {
		if err := EncodeField(w, item); err != nil {
			return err
		}
	}

	return nil
}

func EncodeField(w *Writer, item interface{}) error {
	switch it := item.(type) {
	case Encoder:
		return it.Encode(w)
	case bool:
		w.WriteBool(it)
	case uint8:
		w.WriteUint8(it)
	case int8:
		w.WriteInt8(it)
	case uint16:
		w.WriteUint16BE(it)
	case int16:
		w.WriteInt16BE(it)
	case uint32:
		w.WriteUint32BE(it)
	case int32:
		w.WriteInt32BE(it)
	case uint64:
		w.WriteUint64BE(it)
	case int64:
		w.WriteInt64BE(it)
	case float32:
		w.WriteFloat32BE(it)
	case float64:
		w.WriteFloat64BE(it)
	case []byte:
		if len(it) > math.MaxUint32 {
			return errors.New("variable-length field too large to encode")
		}
		w.WriteUint32BE(uint32(len(it)))
		w.WriteBytes(it)
	case string:
		w.WriteString(it)
	default:
		return encodeReflect(w, item)
	}

	return nil
}

func encodeReflect(w *Writer, item interface{}) error {
	t := reflect.TypeOf(item)

	if t.Kind() == reflect.Array {
		itemVal := reflect.ValueOf(item)
		if t.Elem().Kind() == reflect.Uint8 {
			itemPtr := reflect.New(t)
			itemPtr.Elem().Set(itemVal)
			w.WriteBytes(itemPtr.Elem().Slice(0, itemVal.Len()).Bytes())
			return nil
		}

		for i := 0; i < itemVal.Len(); i++ {
			if err := EncodeField(w, itemVal.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	if t.Kind() == reflect.Slice {
		val := reflect.ValueOf(item)
		if val.Len() > math.MaxUint32 {
			return errors.New("number of array elements too large to encode")
		}

		w.WriteUint32BE(uint32(val.Len()))
		for i := 0; i < val.Len(); i++ {
			if err := EncodeField(w, val.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	return errors.Errorf("type %s cannot be encoded", t.String())
}

// DecodeFields decodes into each pointer target in order, mirroring the
// wire forms produced by EncodeFields.
func DecodeFields(r *Reader, items ...interface{}) error {
	for _, item := range items {
		if err := DecodeField(r, item); err != nil {
			return err
		}
	}

	return nil
}

func DecodeField(r *Reader, item interface{}) error {
	var err error
	switch it := item.(type) {
	case Decoder:
		err = it.Decode(r)
	case *bool:
		b, err := r.ReadUint8()
		if err != nil {
			return err
		}
		if b == 0x00 {
			*it = false
		} else if b == 0x01 {
			*it = true
		} else {
			return errors.Errorf("invalid boolean value: %x", b)
		}
	case *uint8:
		*it, err = r.ReadUint8()
	case *int8:
		*it, err = r.ReadInt8()
	case *uint16:
		*it, err = r.ReadUint16BE()
	case *int16:
		*it, err = r.ReadInt16BE()
	case *uint32:
		*it, err = r.ReadUint32BE()
	case *int32:
		*it, err = r.ReadInt32BE()
	case *uint64:
		*it, err = r.ReadUint64BE()
	case *int64:
		*it, err = r.ReadInt64BE()
	case *float32:
		*it, err = r.ReadFloat32BE()
	case *float64:
		*it, err = r.ReadFloat64BE()
	case *[]byte:
		l, err := r.ReadUint32BE()
		if err != nil {
			return err
		}
		buf, err := r.ReadBytes(int(l))
		if err != nil {
			return err
		}
		*it = buf
	case *string:
		*it, err = r.ReadString()
	default:
		err = decodeReflect(r, item)
	}

	return err
}

func decodeReflect(r *Reader, item interface{}) error {
	itemT := reflect.TypeOf(item)
	if itemT.Kind() != reflect.Ptr {
		return errors.New("can only decode into pointer types")
	}

	itemVal := reflect.ValueOf(item)
	indirectVal := reflect.Indirect(itemVal)
	indirectT := indirectVal.Type()

	if indirectVal.Kind() == reflect.Array {
		l := indirectT.Len()
		tmpPtr := reflect.New(indirectT)

		if indirectT.Elem().Kind() == reflect.Uint8 {
			buf, err := r.ReadBytes(l)
			if err != nil {
				return err
			}
			reflect.Copy(tmpPtr.Elem().Slice(0, l), reflect.ValueOf(buf))
		} else {
			for i := 0; i < l; i++ {
				if err := DecodeField(r, tmpPtr.Elem().Index(i).Addr().Interface()); err != nil {
					return err
				}
			}
		}

		itemVal.Elem().Set(tmpPtr.Elem())
		return nil
	}

	if indirectVal.Kind() == reflect.Slice {
		tmpPtr := reflect.New(indirectT)

		l, err := r.ReadUint32BE()
		if err != nil {
			return err
		}

		for i := 0; i < int(l); i++ {
			sliceItemPtr := reflect.New(indirectT.Elem())
			if err := DecodeField(r, sliceItemPtr.Interface()); err != nil {
				return err
			}
			tmpPtr.Elem().Set(reflect.Append(tmpPtr.Elem(), sliceItemPtr.Elem()))
		}

		itemVal.Elem().Set(tmpPtr.Elem())
		return nil
	}

	return errors.Errorf("type %s cannot be decoded", itemT.String())
}
