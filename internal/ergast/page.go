package ergast

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// PageInfo is the paging part of a response envelope. The API sends the
// numbers as strings.
type PageInfo struct {
	Limit  int
	Offset int
	Total  int
}

func readPageInfo(body []byte) (PageInfo, bool) {
	if !gjson.ValidBytes(body) {
		return PageInfo{}, false
	}
	fields := gjson.GetManyBytes(body, "MRData.limit", "MRData.offset", "MRData.total")

	var values [3]int
	for i, field := range fields {
		if !field.Exists() {
			return PageInfo{}, false
		}
		n, err := strconv.Atoi(field.String())
		if err != nil {
			return PageInfo{}, false
		}
		values[i] = n
	}
	return PageInfo{Limit: values[0], Offset: values[1], Total: values[2]}, true
}
