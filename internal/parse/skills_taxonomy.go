package parse

// skillCategories is the curated skill taxonomy. Order matters: the text
// scan walks it in order, so output is deterministic across parses.
var skillCategories = []struct {
	category string
	skills   []string
}{
	{"programming_languages", []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
		"ruby", "php", "swift", "kotlin", "scala", "r", "matlab", "sql",
		"html", "css", "bash", "shell", "powershell", "perl", "lua",
		"groovy", "objective-c", "assembly", "fortran", "cobol",
		"haskell", "erlang", "elixir", "clojure", "f#", "vb.net",
		"dart", "julia", "solidity", "vhdl", "verilog",
	}},
	{"frameworks", []string{
		"react", "angular", "vue", "django", "flask", "fastapi", "spring",
		"node.js", "express", ".net", "rails", "laravel", "tensorflow",
		"pytorch", "keras", "scikit-learn",
		"next.js", "nuxt.js", "svelte", "nestjs", "fastify", "koa",
		"gin", "echo", "fiber", "actix", "rocket", "phoenix",
		"asp.net", "blazor", "wpf", "winforms", "qt", "gtk",
		"electron", "tauri", "flutter", "react native", "ionic",
		"xamarin", "maui", "unity", "unreal", "godot",
		"spring boot", "hibernate", "mybatis", "dropwizard",
		"micronaut", "quarkus", "vert.x",
		"celery", "airflow", "luigi", "prefect",
		"huggingface", "langchain", "llamaindex",
	}},
	{"databases", []string{
		"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "cassandra",
		"oracle", "sql server", "sqlite", "dynamodb", "firebase",
		"mariadb", "cockroachdb", "timescaledb", "clickhouse",
		"neo4j", "arangodb", "couchdb", "rethinkdb",
		"memcached", "etcd", "consul", "zookeeper",
		"pinecone", "weaviate", "milvus", "qdrant", "chromadb",
		"snowflake", "databricks", "bigquery", "redshift", "athena",
	}},
	{"cloud_platforms", []string{
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
		"kubernetes", "docker", "terraform", "ansible",
		"cloudflare", "vercel", "netlify", "railway", "render",
		"lambda", "ec2", "s3", "rds", "eks", "ecs", "fargate",
		"cloud functions", "cloud run", "gke", "app engine",
		"azure functions", "aks", "cosmos db",
		"openshift", "rancher", "nomad", "vault",
		"prometheus", "grafana", "datadog", "splunk", "elk",
		"jenkins", "gitlab ci", "github actions", "circleci",
		"argocd", "flux", "spinnaker", "tekton",
	}},
	{"data_science", []string{
		"pandas", "numpy", "scipy", "matplotlib", "seaborn",
		"plotly", "bokeh", "altair", "streamlit", "gradio",
		"jupyter", "notebook", "colab",
		"spark", "hadoop", "hive", "pig", "flink", "kafka",
		"dbt", "great expectations", "mlflow", "kubeflow",
		"sagemaker", "vertex ai", "azure ml",
		"opencv", "pillow", "imageio",
		"nltk", "spacy", "gensim", "transformers",
		"xgboost", "lightgbm", "catboost",
	}},
	{"devops", []string{
		"ci/cd", "continuous integration", "continuous deployment",
		"infrastructure as code", "iac", "gitops",
		"linux", "unix", "windows server", "macos",
		"nginx", "apache", "caddy", "traefik", "haproxy",
		"systemd", "supervisor", "pm2",
		"vagrant", "packer", "pulumi", "cdk",
	}},
	{"testing", []string{
		"jest", "mocha", "jasmine", "cypress", "playwright",
		"selenium", "puppeteer", "testcafe",
		"pytest", "unittest", "nose", "robot framework",
		"junit", "testng", "mockito", "wiremock",
		"postman", "insomnia", "soapui",
		"jmeter", "gatling", "locust", "k6",
		"tdd", "bdd", "unit testing", "integration testing",
		"e2e testing", "load testing", "performance testing",
	}},
	{"soft_skills", []string{
		"leadership", "communication", "teamwork", "problem-solving",
		"analytical", "creative", "adaptable", "organized", "detail-oriented",
		"agile", "scrum", "kanban", "waterfall",
		"project management", "product management",
		"technical writing", "documentation",
		"mentoring", "coaching", "training",
		"stakeholder management", "client facing",
		"cross-functional", "collaboration",
		"critical thinking", "decision making",
		"time management", "prioritization",
		"conflict resolution", "negotiation",
		"presentation", "public speaking",
	}},
	{"security", []string{
		"oauth", "jwt", "saml", "openid", "ldap",
		"ssl", "tls", "https", "encryption",
		"penetration testing", "vulnerability assessment",
		"soc2", "gdpr", "hipaa", "pci-dss",
		"owasp", "security best practices",
	}},
	{"methodologies", []string{
		"rest", "graphql", "grpc", "soap", "websocket",
		"microservices", "monolith", "serverless",
		"event-driven", "cqrs", "event sourcing",
		"domain-driven design", "ddd",
		"clean architecture", "hexagonal architecture",
		"solid", "dry", "kiss", "yagni",
		"design patterns", "gang of four",
	}},
}
