// Package main provides the cardbox CLI for inspecting, unpacking and
// validating CardBox containers.
package main

func main() {
	Execute()
}
