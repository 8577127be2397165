package audit

// Remediation hints surfaced by the built-in checks.
//
//nolint:gochecknoglobals // Fixed hint texts
var (
	HintUseGit = &Hint{
		Title:       "Use Git",
		Remediation: "Run `git init` from your code's directory to initialize a git repository.",
	}

	HintConfigureRemote = &Hint{
		Title: "Configure a remote",
		Remediation: "Your repository has no remote named `origin`, so nobody else can fetch your code. " +
			"Create a repository with a hosting service, then run `git remote add origin <url>` and " +
			"`git push -u origin <branch>`.",
	}

	HintTrackFiles = &Hint{
		Title: "Add or ignore all files",
		Remediation: "Some of your files are not tracked by the repository. You can list these files using " +
			"`git status`. If one of those files should not be committed (e.g., because it is created by the " +
			"program and should not be checked in into the repository), then add it to your `.gitignore` file.",
	}

	HintCommitChanges = &Hint{
		Title: "Commit all changes",
		Remediation: "Some of your files contain changes that are not yet committed. You can list these files " +
			"using `git status`, add them by running `git add <file>` for each file, and then " +
			"`git commit -m \"your description of the commit\"`.",
	}

	HintPushChanges = &Hint{
		Title:       "Push all your changes",
		Remediation: "Some of the changes you committed are not yet pushed to the remote. To resolve this, run `git push`.",
	}

	HintConfigureDevContainer = &Hint{
		Title: "Configure and use a dev container",
		Remediation: "For VSCode follow: https://code.visualstudio.com/docs/devcontainers/create-dev-container\n\n" +
			"For PyCharm: https://www.jetbrains.com/help/pycharm/connect-to-devcontainer.html\n\n" +
			"General information: https://containers.dev/",
	}

	HintFixDevContainer = &Hint{
		Title: "Fix the dev container configuration",
		Remediation: "Your `devcontainer.json` could not be read. It must be a JSON object (comments and " +
			"trailing commas are allowed); `image` and `build.dockerfile` must be strings and " +
			"`postCreateCommand` a string or a list of strings.",
	}

	HintChooseBaseImage = &Hint{
		Title: "Choose a base image",
		Remediation: "Set `image` to a pinned base image, or `build.dockerfile` to a Dockerfile, in your " +
			"dev container configuration. Without one the environment cannot be rebuilt.",
	}
)
