// Package cli assembles the vercheck root command.
package cli
