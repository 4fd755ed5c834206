//go:build plugin

package main

var PLUGIN_ID = [4]byte{'V', 'T', 'r', 'k'}

const PLUGIN_NAME = "VTrack"
