package main

import (
	"os"

	"github.com/chzyer/readline"

	"kgeyst.com/text2video/pkg/common"
	"kgeyst.com/text2video/pkg/text2video/api"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfigOrDefault("config.yaml")
	if err != nil {
		return err
	}
	rl, err := readline.New("Enter your prompt: ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	prompt, err := rl.Readline()
	if err != nil { // io.EOF or Ctrl+C: nothing to generate
		return nil
	}
	text2video := api.NewAPI(config, os.Stdout)
	_, err = text2video.GenerateVideo(prompt)
	return err
}
