// Package catalog loads the spirit and adversary reference lists and resolves
// free-text name fragments against them.
//
// Resolution is a first-match linear scan: a fragment resolves to the first
// entry whose lower-cased display name contains the lower-cased fragment. It
// is deliberately not fuzzy, so "river" always means the first spirit named
// with "river" in catalog order.
package catalog
