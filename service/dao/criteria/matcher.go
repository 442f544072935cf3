package criteria

import (
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/service/dao"
)

// FilterByState returns true when state satisfies every State parameter;
// parameters with other names are ignored.
func FilterByState(state process.State, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.StateParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if string(state) != actual {
				return false
			}
		case []string:
			if !contains(actual, string(state)) {
				return false
			}
		case process.State:
			if state != actual {
				return false
			}
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
