package semantic

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("paskal.semantic")
