package grammar

import (
	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"

	"github.com/ghettovoice/navurl/internal/util"
)

// scheme = LOWER *( LOWER / DIGIT / "+" / "-" / "." )
var scheme = abnf.Concat(
	"scheme",
	abnf.Range("LOWER", []byte("a"), []byte("z")),
	abnf.Repeat0Inf("*scheme-char", abnf.Alt(
		"scheme-char",
		abnf.Range("LOWER", []byte("a"), []byte("z")),
		abnf_core.Operators().DIGIT,
		abnf.LiteralCS("+", []byte("+")),
		abnf.LiteralCS("-", []byte("-")),
		abnf.LiteralCS(".", []byte(".")),
	)),
)

func Scheme(s []byte, ns *abnf.Nodes) error {
	return scheme(s, 0, ns) //errtrace:skip
}

// port = 1*DIGIT
var port = abnf.Repeat1Inf("port", abnf_core.Operators().DIGIT)

func Port(s []byte, ns *abnf.Nodes) error {
	return port(s, 0, ns) //errtrace:skip
}

func matchAll[T util.Byteseq](rule abnf.Rule, s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rule([]byte(s), ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
