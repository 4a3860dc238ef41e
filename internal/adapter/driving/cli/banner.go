package cli

import (
	"fmt"

	"github.com/diillson/retail-sales-analytics-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     ____      _        _ _     ____        _
    |  _ \ ___| |_ __ _(_) |   / ___|  __ _| | ___  ___
    | |_) / _ \ __/ _' | | |   \___ \ / _' | |/ _ \/ __|
    |  _ <  __/ || (_| | | |    ___) | (_| | |  __/\__ \
    |_| \_\___|\__\__,_|_|_|   |____/ \__,_|_|\___||___/
                                       A N A L Y T I C S
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))
	fmt.Println(blue(fmt.Sprintf("Retail Sales Analytics CLI (v%s)", version.FormatVersion())))
}
