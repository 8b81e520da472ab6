package main

// _version is the version of phpgen.
// Release builds override it with -ldflags.
var _version = "dev"
