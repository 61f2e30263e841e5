package changedetect

import "github.com/cockroachdb/apd/v3"

// isComparableValue reports whether a value belongs to one of the scalar
// kinds for which equality reliably certifies "unchanged": nil, booleans,
// integers, floats, strings and fixed-point decimals. Composite and mutable
// values (records, slices, maps, times, arbitrary structs) are excluded;
// they may have been mutated in place, so equality proves nothing for them.
func isComparableValue(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		apd.Decimal, *apd.Decimal:
		return true
	}
	return false
}

// valuesEqual compares two comparable-kind values. Decimals compare
// numerically; everything else compares by interface equality, so values of
// differing concrete types count as changed.
func valuesEqual(a, b any) bool {
	da, aok := asDecimal(a)
	db, bok := asDecimal(b)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		if da == nil || db == nil {
			return da == db
		}
		return da.Cmp(db) == 0
	}
	return a == b
}

func asDecimal(v any) (*apd.Decimal, bool) {
	switch d := v.(type) {
	case apd.Decimal:
		return &d, true
	case *apd.Decimal:
		return d, true
	}
	return nil, false
}
