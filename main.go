/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/openclassroom/client/cmd"

func main() {
	cmd.Execute()
}
