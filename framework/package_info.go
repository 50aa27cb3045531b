// Package framework contains the test-runner side of the summary reporter: the hooks through
// which a test run reports its progress, and two things that drive them.
//
// The general model is:
//
// 1. Whatever executes tests calls a TestLogger as each test starts and finishes. Several
// loggers can be combined with MultiTestLogger; the command-line tool uses one for console
// output and one that feeds the run summary reporter.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Run drives a TestLogger from such a tree of tests.
//
// 3. Results collects the outcome of every test, and PrintResults renders them as a table.
package framework
