package domain

import "strings"

// PagingFileHint is shown when the model fails because Windows ran out of virtual memory ("The paging file is too
// small for this operation to complete").
const PagingFileHint = `
Windows Paging File Error Detected!
Please try the following solutions:
1. Increase your Windows paging file size:
   - Open System Properties
   - Go to Advanced > Performance Settings
   - Click 'Change' under Virtual Memory
   - Set a larger size (recommended: 1.5x your RAM)
2. Close other memory-intensive applications
3. Restart your computer to clear memory
`

// IsPagingFileError reports whether err looks like the Windows paging file exhaustion error.
func IsPagingFileError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "paging file")
}
