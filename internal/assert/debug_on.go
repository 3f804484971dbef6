//go:build rpgdebug

package assert

const debugAssertions = true
