package output

import (
	"strconv"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04"

func Time(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func TimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return Time(*t)
}

func Bool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func List(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func Int(n int64) string {
	return strconv.FormatInt(n, 10)
}

func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
