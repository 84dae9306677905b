package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents elimina las marcas diacríticas (NFD -> quitar Mn -> NFC).
// "camión" => "camion". Si la transformación falla devuelve s sin tocar.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeSKU canonicaliza un SKU: sin acentos, sin espacios en los
// extremos y en mayúsculas, para que la unicidad por propietario no dependa
// de cómo se tecleó.
func normalizeSKU(sku string) string {
	return strings.ToUpper(foldAccents(strings.TrimSpace(sku)))
}
