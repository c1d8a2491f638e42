// Package domain holds the portfolio entity rules: slug derivation, list-field
// encoding, input validation and the Result envelope returned by actions.
package domain
