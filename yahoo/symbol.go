// Package yahoo downloads daily closes from the Yahoo Finance chart API into a
// portfolio price table.
package yahoo

import "strings"

// symbols maps portfolio tickers and index names to Yahoo symbols when the
// default exchange suffix does not work.
var symbols = map[string]string{
	// NSE indices
	"NIFTY":         "^NSEI",
	"NIFTY50":       "^NSEI",
	"BANKNIFTY":     "^NSEBANK",
	"NIFTYBANK":     "^NSEBANK",
	"NIFTYIT":       "^CNXIT",
	"NIFTYPHARMA":   "^CNXPHARMA",
	"NIFTYFMCG":     "^CNXFMCG",
	"NIFTYAUTO":     "^CNXAUTO",
	"NIFTYMETAL":    "^CNXMETAL",
	"NIFTYREALTY":   "^CNXREALTY",
	"NIFTYENERGY":   "^CNXENERGY",
	"NIFTYPSUBANK":  "^CNXPSUBANK",
	"NIFTYMIDCAP":   "^NSEMDCP50",
	"NIFTYSMALLCAP": "NIFTYSMLCAP250.NS",
	"NIFTY500":      "^CRSLDX",
	"NIFTYMEDIA":    "^CNXMEDIA",
	"NIFTYINFRA":    "^CNXINFRA",
	"NIFTYPVTBANK":  "^NIFPVTBNK",
	// BSE
	"SENSEX": "^BSESN",
	// ETFs whose ticker differs from the listing
	"LIQUIDCASE":           "LIQUIDBEES.NS",
	"METALETF":             "METALIETF.NS",
	"OIL ETF":              "OILIETF.NS",
	"NIPPONAMC - NETFAUTO": "NETFAUTO.NS",
	// commodities and currencies
	"GOLD":     "GC=F",
	"SILVER":   "SI=F",
	"CRUDEOIL": "CL=F",
	"USDINR":   "USDINR=X",
}

// suffixes are already Yahoo symbols.
var suffixes = []string{".NS", ".BO", ".BSE", "=F", "=X"}

// Symbol returns the Yahoo symbol of a ticker listed on 'exchange'.
//
// Known indices and ETFs are mapped explicitly. Tickers in the "NSE:INFY"
// form use their prefix as exchange. Otherwise BSE listings get the ".BO"
// suffix and everything else is assumed to be on the NSE.
func Symbol(ticker, exchange string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" || strings.HasPrefix(t, "^") {
		return t
	}
	if s, ok := symbols[t]; ok {
		return s
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(t, suffix) {
			return t
		}
	}
	if prefix, rest, ok := strings.Cut(t, ":"); ok {
		exchange, t = prefix, rest
	}
	switch strings.ToUpper(exchange) {
	case "BSE", "BOM":
		return t + ".BO"
	default:
		return t + ".NS"
	}
}
