// Package verify smoke-tests the installed runtime and collects the version
// report printed at the end of a run.
package verify
