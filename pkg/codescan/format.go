package codescan

import (
	"fmt"
	"time"
)

// FormatAlertLine renders one alert as a single aligned line: repository,
// number, created timestamp, state, rule id, and path:start_line.
func FormatAlertLine(repo string, a Alert) string {
	loc := a.MostRecentInstance.Location
	return fmt.Sprintf("%s %4d %s %9s %s %s:%d",
		repo,
		a.Number,
		a.CreatedAt.Format(time.RFC3339),
		a.State,
		a.Rule.ID,
		loc.Path,
		loc.StartLine,
	)
}

// FormatAnalysisLine renders one analysis as a single aligned line:
// repository, id, created timestamp, analysis key, rule and result counts,
// deletable flag, and sarif id.
func FormatAnalysisLine(repo string, a Analysis) string {
	deletable := "N"
	if a.Deletable {
		deletable = "Y"
	}
	return fmt.Sprintf("%s %9d %s %s %3d %4d %s %s",
		repo,
		a.ID,
		a.CreatedAt.Format(time.RFC3339),
		a.AnalysisKey,
		a.RulesCount,
		a.ResultsCount,
		deletable,
		a.SarifID,
	)
}
