package generation

// Prompt templates are fixed configuration. The planning prompt must yield
// strict JSON; everything else is free-form prose.

const planPromptTemplate = `Summarize the following project and provide suggested sections for a project document. Return the response in JSON format with "summary" and "sections" fields, where "summary" is a string and "sections" is an array of section titles.

Project Name: %s
Project Details: %s`

const sectionPromptTemplate = `Write detailed content for the section titled "%s" for the following project:

Project Name: %s
Project Summary: %s
Project Details: %s`

const revisePromptTemplate = `Revise the following section of a bid proposal titled "%s" according to the instructions. Return only the revised section text.

Instructions: %s

Current content:
%s`

const technicalProposalPrompt = `You are an expert technical writer. Based on the provided Request for Quotation (RFQ), your task is to generate a comprehensive technical proposal for a complex engineering project. The proposal should follow industry standards, ensure precise alignment with the RFQ requirements, and cover all necessary technical aspects, including scope of work, methodology, validation approaches, deliverables, timeline, project organization, commercial offer, quality management, compliance, environmental responsibility, and project effort estimation.

Instructions:
1. Introduction: briefly summarize the objectives and purpose of the project as outlined in the RFQ, and state the overall aim of the technical proposal.
2. Project Organization: specify the roles of the project managers on both sides, list the key project team members, and present a clear project timeline with major tasks and dependencies.
3. Estimated Efforts: provide a table showing the estimated effort in hours for each task or project component.
4. Scope of Work: provide a detailed breakdown of the work to be done, tied directly to the tasks specified in the RFQ.
5. Methodology: explain the technical approach for completing each task, including the software tools, models, or techniques that will be used.
6. Validation Process: define the validation criteria and methods, outline relevant test cases, and provide clear benchmarks or error tolerances.
7. Deliverables: list all the deliverables and specify the format in which each will be provided.
8. Assumptions and Limitations: identify any assumptions made regarding the provided data, modeling limitations, or tool compatibility.
9. Commercial Offer and Conditions: include a brief overview of the commercial offer, pricing, and terms and conditions.
10. Quality Management: describe the commitment to quality, referencing relevant certifications and audit processes.
11. Compliance: highlight the commitment to ethical business practices and adherence to international standards.
12. Environmental Responsibility: outline relevant environmental programs, practices, or certifications.
13. Conclusion: summarize the technical and organizational advantages of the proposed approach.

Additional Guidelines:
- Ensure that the language is formal and professional, addressing all aspects of the RFQ comprehensively.
- Include references to any relevant industry standards.

Output Format: format the text in HTML without code blocks. Use appropriate tags commonly used in documents: <h1> for the main heading, <h2> for subheadings, <p> for paragraphs, <ul>/<ol> with <li> for lists, and <table> with <tr>, <th> and <td> for tabular data.`

const reviewProposalPrompt = `You are an expert technical reviewer. Your task is to review a technical offer provided in response to a Request for Quotation (RFQ). Analyze the offer's alignment with the RFQ, provide justifications for how each section of the offer is structured, and highlight areas that fully meet or exceed the RFQ expectations as well as any gaps, improvements, or deviations.

Review each of the following in turn: introduction and project objectives, project organization and time schedule, scope of work, methodology and tooling choices, validation process, deliverables, estimated efforts, commercial offer and conditions, quality management, compliance, environmental responsibility, and the conclusion.

Additional Guidelines:
- Keep the review balanced, highlighting strengths and areas of improvement.
- Provide justifications for any deviations from the RFQ and recommend changes where necessary.

Output Format: format the text in HTML without code blocks, using <h1>, <h2>, <p>, <ul>/<ol> with <li>, and <table> with <tr>, <th> and <td> where appropriate.`
