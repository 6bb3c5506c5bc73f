// Package messages provides localized message formats for constraint
// violations.
//
// A Catalog starts with the locales embedded in the package (English and
// German) and can be extended with YAML or JSON files keyed by language tag:
//
//	fr:
//	  required: "Une valeur doit être définie."
//	  min: "Le nombre doit être supérieur %s%s."
//
// Language negotiation uses golang.org/x/text/language, so regional tags
// and Accept-Language lists resolve to the closest loaded language.
//
// Catalogs are used in two ways. Formats returns a validate.MessageFormats
// to construct a validator that reports in one language from the start.
// Localize rewrites violations produced with the default English formats,
// which lets one validator serve callers with different languages.
package messages
