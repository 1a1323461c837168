package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X winsbygroup.com/brvalida/internal/version.Version=1.2.3"
var Version = "1.0"

// RepoURL is the project repository URL. Can be overridden at build time via:
//
//	go build -ldflags "-X winsbygroup.com/brvalida/internal/version.RepoURL=https://github.com/yourfork/brvalida"
var RepoURL = "https://github.com/winsbygroup/brvalida"

// Greeting is the plain text served on GET /.
const Greeting = "API de validação de CPF, CNPJ e CEP"

// Banner prints identifying information about the server.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " Winsby Group LLC. All rights reserved."

	return fmt.Sprintf("%s\nBrValida (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=BrValida
	const s = `
  ____      __     __    _ _     _       
 | __ ) _ __\ \   / /_ _| (_) __| | __ _ 
 |  _ \| '__|\ \ / / _' | | |/ _' |/ _' |
 | |_) | |    \ V / (_| | | | (_| | (_| |
 |____/|_|     \_/ \__,_|_|_|\__,_|\__,_|
`
	return s
}
