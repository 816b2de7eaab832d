package compare

import (
	"encoding/json"
	"sort"
)

// JSONFormatter encodes a comparison set. The output adds a ranking of every reason by
// net, highest first; per-reason settlements and their audit logs are left out.
type JSONFormatter struct {
	Pretty bool
}

type jsonComparison struct {
	*ComparisonSet
	Ranking []string `json:"ranking"`
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	report := jsonComparison{ComparisonSet: compSet, Ranking: rankByNet(compSet)}

	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// rankByNet lists the reason codes of the base and alternatives by descending net
func rankByNet(compSet *ComparisonSet) []string {
	if compSet == nil {
		return nil
	}
	all := make([]ComparisonResult, 0, len(compSet.AlternativeResults)+1)
	if compSet.BaseResult != nil {
		all = append(all, *compSet.BaseResult)
	}
	all = append(all, compSet.AlternativeResults...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Net.GreaterThan(all[j].Net) })

	codes := make([]string, len(all))
	for i, r := range all {
		codes[i] = r.ReasonCode
	}
	return codes
}
