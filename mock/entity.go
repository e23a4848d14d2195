package mock

import "github.com/fwojciec/doxhund"

var _ doxhund.EntityExtractor = (*EntityExtractor)(nil)

// EntityExtractor is a mock implementation of doxhund.EntityExtractor.
type EntityExtractor struct {
	ExtractFn func(title, text string) *doxhund.Entities
}

func (e *EntityExtractor) Extract(title, text string) *doxhund.Entities {
	return e.ExtractFn(title, text)
}

var _ doxhund.FingerprintFilter = (*FingerprintFilter)(nil)

// FingerprintFilter is a mock implementation of doxhund.FingerprintFilter.
type FingerprintFilter struct {
	AddFn        func(fingerprint string)
	TestFn       func(fingerprint string) bool
	TestAndAddFn func(fingerprint string) bool
}

func (f *FingerprintFilter) Add(fingerprint string) {
	f.AddFn(fingerprint)
}

func (f *FingerprintFilter) Test(fingerprint string) bool {
	return f.TestFn(fingerprint)
}

func (f *FingerprintFilter) TestAndAdd(fingerprint string) bool {
	return f.TestAndAddFn(fingerprint)
}
