package disposable

import _ "embed"

//go:embed list.txt
var rawList string
