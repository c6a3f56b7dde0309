package lexer

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("paskal.lexer")
