package parsing

import "strings"

var skillReplacer = strings.NewReplacer(".", "", " ", "", "-", "", "_", "")

// NormalizeSkill lowercases a skill string and strips dots, spaces, hyphens
// and underscores so that spelling variants compare equal ("React.js",
// "react js" and "reactjs" all normalize to "reactjs"). Idempotent.
func NormalizeSkill(skill string) string {
	return skillReplacer.Replace(strings.ToLower(strings.TrimSpace(skill)))
}
