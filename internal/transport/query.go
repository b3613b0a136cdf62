package transport

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/somoscreators/taskboard/internal/view"
)

// parseParams reads filter params from a query string. Missing values keep
// the defaults: a 30 day window with both task types.
func parseParams(q url.Values) (view.Params, error) {
	params := view.DefaultParams(time.Time{})
	params.Client = q.Get("client")
	params.Group = q.Get("group")
	params.Member = q.Get("member")

	if v := strings.TrimSpace(q.Get("days")); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return view.Params{}, invalidQuery("days", v)
		}
		params.WindowDays = days
	}
	var err error
	if params.IncludePrincipal, err = parseBool(q, "principal", true); err != nil {
		return view.Params{}, err
	}
	if params.IncludeSubtask, err = parseBool(q, "subtask", true); err != nil {
		return view.Params{}, err
	}
	if params.GroupBy, err = view.ParseGroupBy(q.Get("group_by")); err != nil {
		return view.Params{}, err
	}
	return params, nil
}

func parseBool(q url.Values, name string, fallback bool) (bool, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, invalidQuery(name, v)
	}
	return b, nil
}
