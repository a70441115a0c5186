package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.Errorln(err)
		os.Exit(1)
	}
}
