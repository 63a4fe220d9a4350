package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/ssecodec/cmd/ssecodec/config"
	"github.com/papercomputeco/ssecodec/pkg/config"
	"github.com/papercomputeco/ssecodec/pkg/dotdir"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir  string
		origDir string
		out     *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "ssecodec-config-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		// Create a local .ssecodec dir so the manager picks it up
		err = os.MkdirAll(filepath.Join(tmpDir, dotdir.DirName), 0o755)
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	run := func(args ...string) error {
		cmd := configcmder.NewConfigCmd()
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	loadLocal := func() *config.Config {
		data, err := os.ReadFile(filepath.Join(tmpDir, dotdir.DirName, "config.toml"))
		Expect(err).NotTo(HaveOccurred())
		cfg, err := config.ParseConfigTOML(data)
		Expect(err).NotTo(HaveOccurred())
		return cfg
	}

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			Expect(run("set", "codec.deserializer", "text")).To(Succeed())
			Expect(loadLocal().Codec.Deserializer).To(Equal("text"))
			Expect(out.String()).To(ContainSubstring("codec.deserializer"))
		})

		It("sets a boolean value", func() {
			Expect(run("set", "codec.auto_id", "true")).To(Succeed())
			Expect(loadLocal().Codec.AutoID).To(BeTrue())
		})

		It("persists an explicit false over a true default", func() {
			Expect(run("set", "log.pretty", "false")).To(Succeed())
			Expect(loadLocal().Log.Pretty).To(BeFalse())
		})

		It("returns an error for an unknown key", func() {
			err := run("set", "invalid_key", "value")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown config key"))
		})

		It("returns an error for an unknown payload format", func() {
			err := run("set", "codec.serializer", "yaml")
			Expect(err).To(HaveOccurred())
		})

		It("requires exactly two arguments", func() {
			Expect(run("set", "codec.serializer")).NotTo(Succeed())
			Expect(run("set")).NotTo(Succeed())
		})
	})

	Describe("get subcommand", func() {
		It("returns the default when nothing is set", func() {
			Expect(run("get", "codec.serializer")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("codec.serializer"))
			Expect(out.String()).To(ContainSubstring("auto"))
		})

		It("returns a value previously set", func() {
			Expect(run("set", "codec.serializer", "base64")).To(Succeed())
			out.Reset()

			Expect(run("get", "codec.serializer")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("base64"))
		})

		It("marks empty values as not set", func() {
			Expect(run("get", "log.file")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("<not set>"))
		})

		It("returns an error for an unknown key", func() {
			Expect(run("get", "nope")).NotTo(Succeed())
		})
	})

	Describe("list subcommand", func() {
		It("lists every key", func() {
			Expect(run("list")).To(Succeed())
			for _, key := range config.ValidConfigKeys() {
				Expect(out.String()).To(ContainSubstring(key))
			}
		})

		It("shows values that were set", func() {
			Expect(run("set", "log.file", "ssecodec.log")).To(Succeed())
			out.Reset()

			Expect(run("list")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"ssecodec.log"`))
		})
	})
})
