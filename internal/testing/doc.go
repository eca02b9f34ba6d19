// Package testing provides shared fakes and builders for unit tests.
//
//   - FakeRunner: an in-memory host.Runner that records commands, serves
//     canned output and keeps files written through host.WriteFile
//   - RecordingObserver: a provisioning.Observer that keeps events and messages
//   - NewFixture: a provisioning.Context wired to the fakes with default
//     configuration on the supported release
//
// Usage:
//
//	runner := testing.NewFakeRunner().
//	    WithFile("/etc/os-release", testing.UbuntuOSRelease).
//	    On("id -u", "1000\n", nil)
package testing
