// Package phonebook stores name/number records and rejects duplicate names.
package phonebook
