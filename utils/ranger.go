package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadSlice = errors.New("malformed slice expression")

/*
ParseSlice converts a slice phrase into loop bounds [i1, i2) with stride:

	":"     = full range, from 0 to max
	"end"   = last index, from max-1 to max
	"N"     = single index, from N to N+1
	":N"    = range, from 0 to N
	"N:"    = range, from N to max
	"a:b"   = range, from a to b
	"a:b:s" = range, from a to b every s

Bounds are not checked against max here, so "-1:3" parses and is rejected by the consumer.
*/
func ParseSlice(dim string, max int) (i1, i2, stride int, err error) {
	var (
		splits []string
	)
	dim = strings.TrimSpace(dim)
	stride = 1
	switch dim {
	case "":
		err = fmt.Errorf("%w: empty", ErrBadSlice)
		return
	case "end":
		i1, i2 = max-1, max
		return
	case ":":
		i1, i2 = 0, max
		return
	}
	splits = strings.Split(dim, ":")
	if len(splits) > 3 {
		err = fmt.Errorf("%w: %q has more than three fields", ErrBadSlice, dim)
		return
	}
	if i1, err = parseBound(splits[0], 0, dim); err != nil {
		return
	}
	if len(splits) == 1 {
		i2 = i1 + 1
		return
	}
	if i2, err = parseBound(splits[1], max, dim); err != nil {
		return
	}
	if len(splits) == 3 {
		if stride, err = parseBound(splits[2], 1, dim); err != nil {
			return
		}
	}
	return
}

func parseBound(s string, def int, dim string) (i int, err error) {
	if s = strings.TrimSpace(s); len(s) == 0 {
		i = def
		return
	}
	if i, err = strconv.Atoi(s); err != nil {
		err = fmt.Errorf("%w: %q: %v", ErrBadSlice, dim, err)
	}
	return
}
