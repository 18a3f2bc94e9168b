package list

import "strconv"

// Key layout shared with already deployed data; keep it byte-exact.

func DataKey(name string, slot uint64) string {
	return "list:" + name + ":" + strconv.FormatUint(slot, 10)
}

func IndexKey(name string) string { return "list:" + name + ":idx" }
func LockKey(name string) string  { return "list:" + name + ":lock" }
