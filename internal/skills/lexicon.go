package skills

// lexicon is the static catalog of known skill terms, in canonical order.
// Extraction results preserve this order, not position-in-text order.
var lexicon = []string{
	// Programming languages
	"Python", "JavaScript", "Java", "C++", "C#", "Ruby", "PHP", "Swift", "Kotlin", "Go",
	"TypeScript", "Rust", "Scala", "Perl", "R", "MATLAB", "Objective-C", "Dart", "Groovy",

	// Web technologies
	"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Express", "Django", "Flask",
	"Spring", "ASP.NET", "Laravel", "Ruby on Rails", "jQuery", "Bootstrap", "Tailwind",

	// Data science & ML
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Keras", "scikit-learn",
	"Data Science", "Data Analysis", "NLP", "Computer Vision", "AI", "Artificial Intelligence",
	"Statistics", "Big Data", "Data Mining", "Data Visualization", "Tableau", "Power BI",

	// Databases
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Oracle", "SQLite", "NoSQL", "Redis",
	"Elasticsearch", "Cassandra", "DynamoDB", "Firebase", "GraphQL",

	// DevOps & cloud
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"Git", "GitHub", "GitLab", "Terraform", "Ansible", "Puppet", "Chef", "Prometheus",
	"Grafana", "ELK Stack", "Serverless", "Microservices",

	// Mobile
	"Android", "iOS", "React Native", "Flutter", "Xamarin", "Cordova", "Ionic",

	// Other technical skills
	"Agile", "Scrum", "Jira", "REST API", "WebSockets", "Testing", "QA",
	"Selenium", "JUnit", "TestNG", "Cypress", "Jest", "Mocha", "Chai", "Security",
	"Blockchain", "Cryptography", "UI/UX", "Design Patterns", "OOP", "Functional Programming",

	// Soft skills
	"Communication", "Teamwork", "Problem Solving", "Leadership", "Time Management",
	"Critical Thinking", "Creativity", "Adaptability", "Project Management",
}
