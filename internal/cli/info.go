package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the normalizer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("serializ3r - Credential Dump Normalizer")
		fmt.Println()
		fmt.Println("Features:")
		fmt.Println("  • Heuristic line classification with confidence scoring")
		fmt.Println("  • Automatic delimiter detection")
		fmt.Println("  • Hash type identification (MD5, SHA1, SHA256, SHA512, bcrypt)")
		fmt.Println("  • Email, username, and password extraction")
		fmt.Println("  • Robust handling of malformed data")
		fmt.Println("  • JSONL output format")
		fmt.Println()
		fmt.Println("Supported formats:")
		fmt.Println("  • email:password")
		fmt.Println("  • email:hash")
		fmt.Println("  • username:password")
		fmt.Println("  • email:username:password")
		fmt.Println("  • email:username:hash")
		fmt.Println("  • And many more variations with different delimiters")
		fmt.Println()
		fmt.Println("Note: NTLM hashes share MD5's 32-hex surface form and are")
		fmt.Println("reported as md5.")
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
