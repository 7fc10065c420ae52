package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

func strconvQuote(s string) string {
	return strconv.Quote(s)
}

// filterSummary describes the active filters for the status bar.
func filterSummary(f model.FilterSet) string {
	var parts []string
	if f.Status != model.StatusAll {
		parts = append(parts, f.Status)
	}
	if f.Priority != model.PriorityAll {
		parts = append(parts, "priority:"+f.Priority)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search:%q", f.Search))
	}
	if len(f.Tags) > 0 {
		parts = append(parts, "tags:"+strings.Join(f.Tags, ","))
	}
	return "filters: " + strings.Join(parts, " ")
}
