// Command structmap inspects declaration files and the types they map.
package main

func main() {
	Execute()
}
