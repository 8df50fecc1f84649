package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/terralift/terralift/internal/config"
)

var _ = Describe("Configuration", func() {
	Describe("Load", func() {
		Context("without a config file", func() {
			It("should apply the defaults", func() {
				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Server.ServerMode).To(Equal("dev"))
				Expect(cfg.Server.HTTPPort).To(Equal(8000))
				Expect(cfg.Agent.NumWorkers).To(Equal(3))
				Expect(cfg.Auth.Enabled).To(BeFalse())
				Expect(cfg.LogFormat).To(Equal("console"))
				Expect(cfg.LogLevel).To(Equal("info"))
			})
		})

		Context("with environment overrides", func() {
			// Given TERRALIFT_* env vars and no config file
			// When we load
			// Then the env values win over the defaults
			It("should layer env vars over the defaults", func() {
				GinkgoT().Setenv("TERRALIFT_LOGLEVEL", "debug")
				GinkgoT().Setenv("TERRALIFT_SERVER_HTTPPORT", "9001")
				GinkgoT().Setenv("TERRALIFT_AGENT_NUMWORKERS", "7")

				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.LogLevel).To(Equal("debug"))
				Expect(cfg.Server.HTTPPort).To(Equal(9001))
				Expect(cfg.Agent.NumWorkers).To(Equal(7))
				// untouched keys keep their defaults
				Expect(cfg.LogFormat).To(Equal("console"))
			})

			// Given a key set both in the file and the environment
			// When we load
			// Then the env value wins
			It("should let env vars win over the file", func() {
				dir := GinkgoT().TempDir()
				path := filepath.Join(dir, "config.yaml")
				Expect(os.WriteFile(path, []byte("logLevel: warn\n"), 0o600)).To(Succeed())
				GinkgoT().Setenv("TERRALIFT_LOGLEVEL", "error")

				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.LogLevel).To(Equal("error"))
			})

			// Given an env override carrying an invalid value
			// When we load
			// Then validation still applies to it
			It("should validate env-provided values", func() {
				GinkgoT().Setenv("TERRALIFT_LOGLEVEL", "loud")

				_, err := config.Load("")
				Expect(err).To(MatchError(ContainSubstring("invalid log level")))
			})
		})

		Context("with a config file", func() {
			var path string

			writeConfig := func(content string) {
				dir := GinkgoT().TempDir()
				path = filepath.Join(dir, "config.yaml")
				Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
			}

			It("should layer file values over the defaults", func() {
				writeConfig(`
server:
  httpPort: 9090
agent:
  numWorkers: 5
logLevel: debug
`)
				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Server.HTTPPort).To(Equal(9090))
				Expect(cfg.Agent.NumWorkers).To(Equal(5))
				Expect(cfg.LogLevel).To(Equal("debug"))
				// untouched keys keep their defaults
				Expect(cfg.Server.ServerMode).To(Equal("dev"))
				Expect(cfg.LogFormat).To(Equal("console"))
			})

			It("should load stack definitions and default their kind", func() {
				writeConfig(`
defaultStack: network
stacks:
  network:
    root: /srv/stacks/network
    workspace: staging
    allowDestroy: true
    backendConfig:
      bucket: tf-states
    variables:
      region: eu-west-1
  compute:
    kind: terraform
    root: /srv/stacks/compute
`)
				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.DefaultStack).To(Equal("network"))
				Expect(cfg.Stacks).To(HaveLen(2))

				network := cfg.Stacks["network"]
				Expect(network.Kind).To(Equal("terraform"))
				Expect(network.Root).To(Equal("/srv/stacks/network"))
				Expect(network.Workspace).To(Equal("staging"))
				Expect(network.AllowDestroy).To(BeTrue())
				Expect(network.AutoApply).To(BeFalse())
				Expect(network.BackendConfig).To(HaveKeyWithValue("bucket", "tf-states"))
				Expect(network.Variables).To(HaveKeyWithValue("region", "eu-west-1"))
			})

			It("should fail when the file does not exist", func() {
				_, err := config.Load("/nonexistent/config.yaml")
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown log level", func() {
				writeConfig("logLevel: loud\n")
				_, err := config.Load(path)
				Expect(err).To(MatchError(ContainSubstring("invalid log level")))
			})

			It("should reject an unknown log format", func() {
				writeConfig("logFormat: yaml\n")
				_, err := config.Load(path)
				Expect(err).To(MatchError(ContainSubstring("invalid log format")))
			})

			It("should reject an unknown server mode", func() {
				writeConfig("server:\n  mode: staging\n")
				_, err := config.Load(path)
				Expect(err).To(MatchError(ContainSubstring("invalid server mode")))
			})

			It("should reject a defaultStack that is not configured", func() {
				writeConfig("defaultStack: ghost\n")
				_, err := config.Load(path)
				Expect(err).To(MatchError(ContainSubstring("not a configured stack")))
			})
		})
	})

	Describe("StackSpec", func() {
		It("should convert to a stack config carrying the entry name", func() {
			spec := config.StackSpec{
				Kind:         "terraform",
				Root:         "/srv/stacks/network",
				Workspace:    "prod",
				Version:      "1.7.5",
				AllowDestroy: true,
				AutoApply:    true,
			}

			sc := spec.StackConfig("network")
			Expect(sc.Name).To(Equal("network"))
			Expect(sc.RootPath).To(Equal("/srv/stacks/network"))
			Expect(sc.Workspace).To(Equal("prod"))
			Expect(sc.Version).To(Equal("1.7.5"))
			Expect(sc.AllowDestroy).To(BeTrue())
			Expect(sc.AutoApply).To(BeTrue())
		})
	})
})
