//go:build !rpgdebug

package assert

const debugAssertions = false
