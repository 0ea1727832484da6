// Package ini models interpreter runtime configuration as an ordered,
// multi-valued directive store.
//
// A Store maps a case-sensitive directive name to an ordered list of
// distinct values. Most directives carry one value; a few (extension,
// zend_extension) legitimately carry many.
//
// # Text Form
//
// The text grammar is line oriented:
//
//	; full-line comment
//	error_reporting=E_ALL
//	extension=opcache.so
//	extension=intl.so
//
// Lines without "=" are skipped, never reported. When a working directory
// is supplied, {PWD} is substituted and forward slashes are rewritten to
// backslashes.
//
// # Command Line Form
//
// CLIArgs renders each directive as ` -d "name=value"`. Only the first value
// of a directive reaches the command line.
//
// # Caches
//
// The text form, both command line forms and the extensions-only projection
// are memoized. Replacing mutations (Set, Remove, ReplaceAll) drop every
// cache. Add deliberately does not: a value appended after a view was
// rendered stays invisible in that view until the next replacing mutation.
//
// # Publication
//
// A store is built by one owner and then published. Freeze marks it
// read-only; mutating a frozen store panics. Readers of a published store
// may run concurrently.
package ini
