package wppdata

import "strconv"

func itoa(n int) string { return strconv.Itoa(n) }

func rangeStr(lo, hi int) string { return itoa(lo) + ".." + itoa(hi) }
