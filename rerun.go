package main

import (
	"regexp"
	"strings"

	"github.com/launchdarkly/test-summary-reporter/framework"
)

// rerunCommand returns a "go test" command line that runs the top-level tests containing
// each failure, or "" if there were no failures. Test IDs are expected to start with the
// package path, as the gotest feed produces them.
func rerunCommand(results framework.Results) string {
	var packages, tests []string
	seen := make(map[string]bool)
	for _, f := range results.Failures {
		if len(f.TestID.Path) < 2 {
			continue
		}
		pkg, test := f.TestID.Path[0], f.TestID.Path[1]
		if !seen["p:"+pkg] {
			seen["p:"+pkg] = true
			packages = append(packages, pkg)
		}
		if !seen["t:"+test] {
			seen["t:"+test] = true
			tests = append(tests, regexp.QuoteMeta(test))
		}
	}
	if len(tests) == 0 {
		return ""
	}

	var cmd commandBuilder
	cmd.add("go", "test", "-run", "^("+strings.Join(tests, "|")+")$")
	cmd.add(packages...)
	return cmd.String()
}
