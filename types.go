package main

// SizeResult is the outcome of aggregating one path: the exact byte sum of
// every regular file counted, how many files that was, and how many entries
// were skipped because they could not be read.
type SizeResult struct {
	TotalBytes uint64
	FileCount  int
	Skipped    int
}

// pathReport pairs a path argument with its aggregation outcome.
type pathReport struct {
	Path   string
	Result SizeResult
	Err    error
}
