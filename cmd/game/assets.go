package main

import "embed"

// configFS holds the shipped game.yaml and levels, used unless --data is given
//
//go:embed configs
var configFS embed.FS
