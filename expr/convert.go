package expr

import (
	"strconv"

	"github.com/grailbio/seqflow/read"
)

// toInt converts d to an int Data, parsing bytes as decimal text and
// truncating floats toward zero, matching the original crate's `as i64`
// conversions exposed through its int()/float()/bytes() expression casts.
func toInt(d read.Data) (read.Data, error) {
	switch d.Kind() {
	case read.KindInt:
		return d, nil
	case read.KindFloat:
		f, _ := d.AsFloat()
		return read.Int(int64(f)), nil
	case read.KindBool:
		b, _ := d.AsBool()
		if b {
			return read.Int(1), nil
		}
		return read.Int(0), nil
	case read.KindBytes:
		b, _ := d.AsBytes()
		i, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return read.Data{}, &convError{"int", string(b)}
		}
		return read.Int(i), nil
	}
	return read.Data{}, typeErr("convertible to int", d)
}

func toFloat(d read.Data) (read.Data, error) {
	switch d.Kind() {
	case read.KindFloat:
		return d, nil
	case read.KindInt:
		i, _ := d.AsInt()
		return read.Float(float64(i)), nil
	case read.KindBytes:
		b, _ := d.AsBytes()
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return read.Data{}, &convError{"float", string(b)}
		}
		return read.Float(f), nil
	}
	return read.Data{}, typeErr("convertible to float", d)
}

func toBytes(d read.Data) read.Data {
	if d.Kind() == read.KindBytes {
		return d
	}
	return read.Bytes([]byte(d.String()))
}

type convError struct {
	target string
	input  string
}

func (e *convError) Error() string {
	return "cannot convert " + strconv.Quote(e.input) + " to " + e.target
}
