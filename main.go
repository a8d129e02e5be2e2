package main

import "github.com/vinhngba2704/Tunify-SongPlayerWebApp/cmd"

func main() {
	cmd.Execute()
}
