package main

var Shorten = shorten
