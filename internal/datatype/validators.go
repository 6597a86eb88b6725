package datatype

import (
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

// defaultValidators returns the baseline set named in §2. Non-goal: these
// are intentionally simple — the spec only specifies the interface the
// registry plugs validators into, not a rigorous numeric/network stack.
func defaultValidators() map[string]Validator {
	return map[string]Validator{
		"BOOLEAN":  validateBoolean,
		"INTEGER":  validateInteger,
		"IPADDR":   validateIPAddr,
		"IPV4ADDR": validateIPv4Addr,
		"IPV6ADDR": validateIPv6Addr,
		"IPPREFIX": validateIPPrefix,
		"MACADDR":  validateMACAddr,
		"HOSTNAME": validateHostname,
		"STRING":   validateString,
		"DQSTRING": validateQuoted('"'),
		"SQSTRING": validateQuoted('\''),
		"BQSTRING": validateQuoted('`'),
	}
}

func validateBoolean(word string) error {
	switch strings.ToLower(word) {
	case "true", "false", "yes", "no", "on", "off", "1", "0":
		return nil
	}
	return fmt.Errorf("%q is not a boolean", word)
}

func validateInteger(word string) error {
	if _, err := strconv.ParseInt(word, 10, 64); err != nil {
		return fmt.Errorf("%q is not an integer", word)
	}
	return nil
}

func validateIPAddr(word string) error {
	if _, err := netip.ParseAddr(word); err != nil {
		return fmt.Errorf("%q is not an IP address", word)
	}
	return nil
}

func validateIPv4Addr(word string) error {
	addr, err := netip.ParseAddr(word)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%q is not an IPv4 address", word)
	}
	return nil
}

func validateIPv6Addr(word string) error {
	addr, err := netip.ParseAddr(word)
	if err != nil || !addr.Is6() {
		return fmt.Errorf("%q is not an IPv6 address", word)
	}
	return nil
}

func validateIPPrefix(word string) error {
	if _, err := netip.ParsePrefix(word); err != nil {
		return fmt.Errorf("%q is not an IP prefix", word)
	}
	return nil
}

var macRE = regexp.MustCompile(`^([0-9a-fA-F]{2}:){5}[0-9a-fA-F]{2}$`)

func validateMACAddr(word string) error {
	if !macRE.MatchString(word) {
		return fmt.Errorf("%q is not a MAC address", word)
	}
	return nil
}

var hostnameRE = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

func validateHostname(word string) error {
	if len(word) == 0 || len(word) > 253 || !hostnameRE.MatchString(word) {
		return fmt.Errorf("%q is not a valid hostname", word)
	}
	return nil
}

func validateString(word string) error {
	if word == "" {
		return fmt.Errorf("empty string not allowed")
	}
	return nil
}

// validateQuoted returns a validator accepting any word that was produced by
// the lexer unwrapping a quote of the given kind. The lexer already strips
// quoting and escapes (§4.1), so by the time a word reaches here there is
// nothing left to check beyond non-emptiness; the distinct DQSTRING /
// SQSTRING / BQSTRING names exist so a grammar author can require "the user
// typed this quoted" without constraining content.
func validateQuoted(_ byte) Validator {
	return func(word string) error {
		return nil
	}
}
